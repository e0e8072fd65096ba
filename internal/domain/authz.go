package domain

// Authorization predicates. Pure functions over (principal, event): callers
// resolve the accepted-invitation fact from storage and pass it in, keeping
// the rules themselves free of IO. Each predicate returns nil when allowed
// or an AuthzError with the denial reason.

// IsOrganizerOf reports whether the principal organizes the event.
func IsOrganizerOf(p Principal, e *Event) bool {
	return p.Authenticated && p.UserID == e.OrganizerID
}

// CanView decides whether the principal may see the event. Public events are
// visible to everyone, anonymous included. Private events are visible only
// to the organizer and to holders of an accepted invitation.
func CanView(p Principal, e *Event, hasAcceptedInvite bool) error {
	if !e.IsPrivate {
		return nil
	}
	if !p.Authenticated {
		return Forbidden("private event requires authentication")
	}
	if IsOrganizerOf(p, e) || hasAcceptedInvite {
		return nil
	}
	return Forbidden("you are not invited to this private event")
}

// CanModify decides whether the principal may update or delete the event.
func CanModify(p Principal, e *Event) error {
	if IsOrganizerOf(p, e) {
		return nil
	}
	return Forbidden("only the event organizer can modify this event")
}

// CanCreate decides whether the principal may create events.
func CanCreate(p Principal) error {
	if p.IsOrganizer() {
		return nil
	}
	return Forbidden("only organizers can create events")
}

// CanRegister decides whether the principal may register for the event. The
// event must be viewable under the private-event rule; the organizer of a
// private event bypasses the invitation requirement.
func CanRegister(p Principal, e *Event, hasAcceptedInvite bool) error {
	if !p.Authenticated {
		return Forbidden("registration requires authentication")
	}
	if e.IsPrivate && !IsOrganizerOf(p, e) && !hasAcceptedInvite {
		return Forbidden("registration for a private event requires an accepted invitation")
	}
	return nil
}

// CanInvite decides whether the principal may invite others to the event.
// Only the organizer of a private event may invite; the two denial kinds
// carry distinct sentinels so callers can surface them differently.
func CanInvite(p Principal, e *Event) error {
	if !IsOrganizerOf(p, e) {
		return Forbidden("only the event organizer can send invitations")
	}
	if !e.IsPrivate {
		return &AuthzError{Reason: "invitations are only for private events", Sentinel: ErrNotPrivate}
	}
	return nil
}
