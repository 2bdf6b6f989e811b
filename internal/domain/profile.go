package domain

import (
	"context"
	"time"
)

// TeeShirtSize is a closed enumeration of t-shirt sizes, stored and
// serialized by symbolic name.
type TeeShirtSize string

const (
	TeeShirtNotSpecified TeeShirtSize = "NOT_SPECIFIED"
	TeeShirtXSM          TeeShirtSize = "XS_M"
	TeeShirtXSW          TeeShirtSize = "XS_W"
	TeeShirtSM           TeeShirtSize = "S_M"
	TeeShirtSW           TeeShirtSize = "S_W"
	TeeShirtMM           TeeShirtSize = "M_M"
	TeeShirtMW           TeeShirtSize = "M_W"
	TeeShirtLM           TeeShirtSize = "L_M"
	TeeShirtLW           TeeShirtSize = "L_W"
	TeeShirtXLM          TeeShirtSize = "XL_M"
	TeeShirtXLW          TeeShirtSize = "XL_W"
	TeeShirtXXLM         TeeShirtSize = "XXL_M"
	TeeShirtXXLW         TeeShirtSize = "XXL_W"
	TeeShirtXXXLM        TeeShirtSize = "XXXL_M"
	TeeShirtXXXLW        TeeShirtSize = "XXXL_W"
)

var teeShirtSizes = map[TeeShirtSize]struct{}{
	TeeShirtNotSpecified: {},
	TeeShirtXSM:          {}, TeeShirtXSW: {},
	TeeShirtSM: {}, TeeShirtSW: {},
	TeeShirtMM: {}, TeeShirtMW: {},
	TeeShirtLM: {}, TeeShirtLW: {},
	TeeShirtXLM: {}, TeeShirtXLW: {},
	TeeShirtXXLM: {}, TeeShirtXXLW: {},
	TeeShirtXXXLM: {}, TeeShirtXXXLW: {},
}

// ParseTeeShirtSize validates a symbolic size name. Unknown names are
// rejected with ErrInvalidInput.
func ParseTeeShirtSize(s string) (TeeShirtSize, error) {
	size := TeeShirtSize(s)
	if _, ok := teeShirtSizes[size]; !ok {
		return "", ErrInvalidInput
	}
	return size, nil
}

// Profile represents a user profile, keyed by the opaque authenticated user
// id. Profiles are created lazily on first authenticated access.
// swagger:model Profile
type Profile struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	MainEmail    string       `json:"main_email"`
	TeeShirtSize TeeShirtSize `json:"tee_shirt_size"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ProfileUpdate carries a partial profile update. Nil fields are unchanged.
type ProfileUpdate struct {
	DisplayName  *string
	TeeShirtSize *TeeShirtSize
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	Create(ctx context.Context, prof *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Profile, error)
	Update(ctx context.Context, prof *Profile) error
}

// WishlistRepository stores the per-user session wishlist.
type WishlistRepository interface {
	// Add records the session on the user's wishlist. Returns
	// ErrAlreadyInWishlist if it is already there.
	Add(ctx context.Context, userID, sessionID string) error
	ListSessionIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// ProfileService defines the business logic for profiles and wishlists. The
// email parameter is the verified address from the caller's identity token,
// used when the profile is created lazily.
type ProfileService interface {
	GetOrCreate(ctx context.Context, userID, email string) (*Profile, error)
	Save(ctx context.Context, userID, email string, upd ProfileUpdate) (*Profile, error)
	AddSessionToWishlist(ctx context.Context, userID, email, sessionID string) (*Session, error)
	ListWishlistSessions(ctx context.Context, userID, email string) ([]*Session, error)
}
