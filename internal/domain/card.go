package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// FlexString absorbs fields the directory serves as either a JSON number or a
// string (house numbers, zip codes).
type FlexString string

// UnmarshalJSON accepts strings, integers and floats.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// LikeRef is one entry of a card's likes list. The directory serves entries
// in two shapes: a bare user-id string, or an object carrying "_id" or "id".
type LikeRef struct {
	// raw is set when the entry was a bare string.
	raw string
	// objectID holds the normalized id of an object entry.
	objectID string
	isObject bool
}

// LikeRefFromID builds a bare-string entry, mainly for tests and fixtures.
func LikeRefFromID(id string) LikeRef {
	return LikeRef{raw: id}
}

// UnmarshalJSON accepts either entry shape.
func (l *LikeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = LikeRef{raw: s}
		return nil
	}
	var obj struct {
		UnderscoreID string `json:"_id"`
		ID           string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	id := obj.UnderscoreID
	if id == "" {
		id = obj.ID
	}
	*l = LikeRef{objectID: id, isObject: true}
	return nil
}

// MarshalJSON round-trips the original shape.
func (l LikeRef) MarshalJSON() ([]byte, error) {
	if l.isObject {
		return json.Marshal(map[string]string{"_id": l.objectID})
	}
	return json.Marshal(l.raw)
}

// UserID normalizes the entry to a canonical user id.
func (l LikeRef) UserID() string {
	if l.isObject {
		return l.objectID
	}
	return l.raw
}

// Matches reports whether the entry refers to the given user.
func (l LikeRef) Matches(userID string) bool {
	if userID == "" {
		return false
	}
	return l.UserID() == userID
}

// Image is an optional card illustration.
type Image struct {
	URL string `json:"url,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// Address locates the business. Only what the directory enforces is required.
type Address struct {
	State       string     `json:"state,omitempty"`
	Country     string     `json:"country,omitempty"`
	City        string     `json:"city,omitempty"`
	Street      string     `json:"street,omitempty"`
	HouseNumber FlexString `json:"houseNumber,omitempty"`
	Zip         FlexString `json:"zip,omitempty"`
}

// Card is the remote-owned business card entity. The portal only ever holds
// a read-mostly copy per page load.
type Card struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Description string     `json:"description,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	Web         string     `json:"web,omitempty"`
	Image       Image      `json:"image,omitempty"`
	Address     Address    `json:"address,omitempty"`
	BizNumber   int64      `json:"bizNumber,omitempty"`
	Likes       []LikeRef  `json:"likes,omitempty"`
	OwnerID     string     `json:"user_id,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// LikedBy is the single membership predicate used everywhere a liked state is
// computed: a string entry matches by equality, an object entry by its
// normalized id. An empty user id never matches.
func (c Card) LikedBy(userID string) bool {
	for _, like := range c.Likes {
		if like.Matches(userID) {
			return true
		}
	}
	return false
}
