// Package events holds the topic names, event types and payloads exchanged
// with other services.
package events

// Topics.
const (
	TopicAdoptionEvents = "adoption.events"
	TopicIdentityEvents = "identity.events"
)

// Adoption event types.
const (
	PetCreated = "adoption.pet.created"
	PetLiked   = "adoption.pet.liked"
	PetUnliked = "adoption.pet.unliked"
)

// Identity event types consumed by the adoption service.
const (
	IdentityUserCreated = "identity.user.created"
	IdentityUserUpdated = "identity.user.updated"
)
