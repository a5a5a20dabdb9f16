package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/matchboard/matchboard/account"
)

const (
	photoCDN      = "https://cdn.platform.invalid/images"
	photoCardSize = "225x225/225x225/0x186/1127x1313"
	photoFullSize = "0x186/1127x1313"
)

// Photo is a single profile photo descriptor. The id is extracted from the
// raw photo URL, whose path follows the pattern {sizes}/0/{image_id}.webp.
type Photo struct {
	ID string
}

func newPhoto(p account.PhotoPayload) Photo {
	full := p.Full
	id := full
	if i := strings.LastIndex(full, "/0/"); i >= 0 {
		id = full[i+len("/0/"):]
	}
	if j := strings.LastIndex(id, ".webp"); j >= 0 {
		id = id[:j]
	}
	return Photo{ID: id}
}

func (p Photo) CardURL() string {
	return fmt.Sprintf("%s/%s/0/%s.webp?v=2", photoCDN, photoCardSize, p.ID)
}

func (p Photo) OriginalURL() string {
	return fmt.Sprintf("%s/%s/0/%s.webp?v=2", photoCDN, photoFullSize, p.ID)
}

// Profile is the read-only view the UI consumes. It is always derived on
// read from a cached raw payload, never persisted itself.
type Profile struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Age         int     `json:"age"`
	LastLogin   string  `json:"last_login"`
	Distance    string  `json:"distance"`
	Photos      []Photo `json:"photos"`

	payload account.ProfilePayload
}

// NewProfile derives the view from a raw profile payload. The raw distance
// is reported in miles; the view shows rounded kilometers with the locality.
func NewProfile(p account.ProfilePayload) Profile {
	user := p.User
	km := int(math.Round(user.Location.Formatted.Distance * 1.6))

	photos := make([]Photo, 0, len(user.Photos))
	for _, raw := range user.Photos {
		photos = append(photos, newPhoto(raw))
	}

	return Profile{
		UserID:      user.UserID,
		DisplayName: user.UserInfo.DisplayName,
		Age:         user.UserInfo.Age,
		LastLogin:   p.Extras.LastOnlineString,
		Distance:    fmt.Sprintf("%s, %d km", user.Location.Formatted.Standard, km),
		Photos:      photos,
		payload:     p,
	}
}

// Payload returns the raw payload the view was derived from.
func (p Profile) Payload() account.ProfilePayload {
	return p.payload
}
