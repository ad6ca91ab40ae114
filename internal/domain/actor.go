package domain

// ActorRole is the closed set of authenticated actors. The authorization
// boundary matches on it exhaustively; there is no free-form role tag.
type ActorRole string

const (
	RoleWorker        ActorRole = "WORKER"
	RoleMerchantAdmin ActorRole = "MERCHANT_ADMIN"
	RoleCustomer      ActorRole = "CUSTOMER"
)

// Valid reports whether r is one of the known roles.
func (r ActorRole) Valid() bool {
	switch r {
	case RoleWorker, RoleMerchantAdmin, RoleCustomer:
		return true
	}
	return false
}
