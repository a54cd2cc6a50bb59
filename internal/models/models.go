package models

import "time"

// User represents an account in the system. Profile fields mirror what the
// Google identity boundary hands us at link time; raw OAuth tokens stay
// internal and never cross the JSON boundary.
type User struct {
	ID                          int64     `json:"id"`
	Email                       string    `json:"email"`
	GoogleUserID                string    `json:"google_user_id"`
	GoogleDisplayName           string    `json:"google_display_name"`
	GooglePublicProfileURL      string    `json:"google_public_profile_url"`
	GooglePublicProfilePhotoURL string    `json:"google_public_profile_photo_url"`
	GoogleAccessToken           string    `json:"-"`
	GoogleRefreshToken          string    `json:"-"`
	GoogleExpiresIn             int64     `json:"-"`
	GoogleExpiresAt             int64     `json:"google_expires_at"`
	PushToken                   *string   `json:"-"`
	CreatedAt                   time.Time `json:"created_at"`
}

// FriendEdge is a directed owner->friend relationship record. An edge from
// A to B says nothing about whether a B to A edge exists, and duplicate
// owner/friend pairs are permitted.
type FriendEdge struct {
	ID           int64     `json:"id"`
	OwnerUserID  int64     `json:"owner_user_id"`
	FriendUserID int64     `json:"friend_user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Theme is a daily contest topic. PreviewPhotoID is a weak reference to a
// Photo, lookup-only.
type Theme struct {
	ID             int64     `json:"id"`
	DisplayName    string    `json:"display_name"`
	StartAt        time.Time `json:"start_at"`
	PreviewPhotoID int64     `json:"preview_photo_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Photo is a submission tied to a user and a theme. Fields below the marker
// are derived at materialization time and never persisted; the vote count in
// particular is recomputed from vote records on every load and must not be
// trusted if set by a caller.
type Photo struct {
	ID                int64     `json:"id"`
	OwnerUserID       int64     `json:"owner_user_id"`
	OwnerDisplayName  string    `json:"owner_display_name"`
	OwnerProfileURL   string    `json:"owner_profile_url"`
	OwnerProfilePhoto string    `json:"owner_profile_photo"`
	ThemeID           int64     `json:"theme_id"`
	ThemeDisplayName  string    `json:"theme_display_name"`
	ImageBlobKey      string    `json:"-"`
	Uploaded          bool      `json:"uploaded"`
	CreatedAt         time.Time `json:"created_at"`

	// Derived per materialization, never stored.
	NumVotes        int    `json:"num_votes"`
	Voted           bool   `json:"voted"`
	FullsizeURL     string `json:"fullsize_url,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	VoteCTAURL      string `json:"vote_cta_url,omitempty"`
	PhotoContentURL string `json:"photo_content_url,omitempty"`
}

// Vote is a single ballot by a single user on a single photo. The entity
// itself carries no uniqueness rule; one-vote-per-user-per-photo is the
// responsibility of the writing service.
type Vote struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	PhotoID     int64     `json:"photo_id"`
	CreatedAt   time.Time `json:"created_at"`
}
