// Package access implements the per-record authorization gate. Every core
// operation receives an explicit Actor and asks the gate before touching a
// record; there is no ambient current-user state.
package access

// Roles assignable to an actor.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Actor is an authenticated identity attempting an operation.
type Actor struct {
	ID    string
	Email string
	Role  string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Decision is the result of a gate evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision { return Decision{Allowed: true, Reason: reason} }
func deny(reason string) Decision  { return Decision{Allowed: false, Reason: reason} }

// CanReadConsultation permits the record owner and administrators.
func CanReadConsultation(actor Actor, ownerID string) Decision {
	if actor.IsAdmin() {
		return allow("admin role")
	}
	if actor.ID != "" && actor.ID == ownerID {
		return allow("owner")
	}
	return deny("not owner")
}

// CanCreateConsultation permits creation only when the new record is owned by
// the actor. An actor cannot create records on someone else's behalf.
func CanCreateConsultation(actor Actor, ownerID string) Decision {
	if actor.ID != "" && actor.ID == ownerID {
		return allow("owner")
	}
	return deny("owner mismatch")
}

// CanUpdateConsultation permits the record owner and administrators.
func CanUpdateConsultation(actor Actor, ownerID string) Decision {
	if actor.IsAdmin() {
		return allow("admin role")
	}
	if actor.ID != "" && actor.ID == ownerID {
		return allow("owner")
	}
	return deny("not owner")
}

// CanReadNotification permits only the record owner. There is no admin
// override on notifications.
func CanReadNotification(actor Actor, ownerID string) Decision {
	if actor.ID != "" && actor.ID == ownerID {
		return allow("owner")
	}
	return deny("not owner")
}

// CanUpdateNotification permits only the record owner.
func CanUpdateNotification(actor Actor, ownerID string) Decision {
	return CanReadNotification(actor, ownerID)
}

// CanReadBankAccount permits any authenticated actor to see active accounts.
// Administrators additionally see inactive ones.
func CanReadBankAccount(actor Actor, isActive bool) Decision {
	if actor.IsAdmin() {
		return allow("admin role")
	}
	if actor.ID == "" {
		return deny("unauthenticated")
	}
	if isActive {
		return allow("active account")
	}
	return deny("inactive account")
}

// CanWriteBankAccount permits only administrators.
func CanWriteBankAccount(actor Actor) Decision {
	if actor.IsAdmin() {
		return allow("admin role")
	}
	return deny("admin only")
}
