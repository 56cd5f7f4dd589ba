package core

// FilterByRole narrows the full user list to what the requester may see:
//
//	admin      -> everyone
//	supervisor -> supervisors and usuarios (no admins)
//	anything else -> only records sharing the requester's id
//
// The result is a subsequence of all in its original order. Duplicate ids are
// not collapsed; the last branch returns every record that matches.
func FilterByRole(requester Usuario, all []Usuario) []Usuario {
	switch requester.Rol {
	case RoleAdmin:
		return all
	case RoleSupervisor:
		visible := make([]Usuario, 0, len(all))
		for _, u := range all {
			if u.Rol == RoleSupervisor || u.Rol == RoleUsuario {
				visible = append(visible, u)
			}
		}
		return visible
	default:
		visible := make([]Usuario, 0, 1)
		for _, u := range all {
			if u.ID == requester.ID {
				visible = append(visible, u)
			}
		}
		return visible
	}
}
