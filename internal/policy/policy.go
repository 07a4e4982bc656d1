// Package policy is the single decision point for who may act on which
// resource. Every protected endpoint funnels through Authorize instead of
// re-implementing ownership checks inline, so the rules stay uniform and
// testable away from HTTP concerns.
//
// Callers must establish that the resources exist before asking for a
// decision: a missing resource is "not found", and answering "forbidden"
// for it would leak existence.
package policy

import "github.com/inkwell-blog/inkwell-be/internal/models"

// Action enumerates the gated mutations and author-scoped reads.
type Action int

const (
	CreatePost Action = iota
	UpdatePost
	DeletePost
	TogglePublishPost
	CreateComment
	UpdateComment
	DeleteComment
)

// Reason says why a decision denied the action.
type Reason string

const (
	// NotAnAuthor: the actor lacks the author flag required to manage posts.
	NotAnAuthor Reason = "NotAnAuthor"
	// NotOwner: the resource belongs to a different user.
	NotOwner Reason = "NotOwner"
	// NotAuthorized: none of the accepted relationships to the resource hold.
	NotAuthorized Reason = "NotAuthorized"
)

// Resource carries the already-fetched entities a decision depends on.
type Resource struct {
	Post    *models.Post
	Comment *models.Comment
}

// Decision is the tagged result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow permits the action.
func Allow() Decision { return Decision{Allowed: true} }

// Deny refuses the action with a reason.
func Deny(r Reason) Decision { return Decision{Reason: r} }

// Authorize decides whether actor may perform action on the given resource.
// It never mutates state; it only gates the persistence call that follows.
func Authorize(actor models.User, action Action, res Resource) Decision {
	switch action {
	case CreatePost:
		if !actor.Author {
			return Deny(NotAnAuthor)
		}
		return Allow()

	case UpdatePost, DeletePost, TogglePublishPost:
		if res.Post.AuthorID != actor.ID {
			return Deny(NotOwner)
		}
		return Allow()

	case CreateComment:
		// Any authenticated user may comment on a published post; the
		// published precondition is checked by the service.
		return Allow()

	case UpdateComment:
		if res.Comment.UserID != actor.ID {
			return Deny(NotOwner)
		}
		return Allow()

	case DeleteComment:
		if res.Comment.UserID == actor.ID || res.Post.AuthorID == actor.ID {
			return Allow()
		}
		return Deny(NotAuthorized)
	}
	return Deny(NotAuthorized)
}
