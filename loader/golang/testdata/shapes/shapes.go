// Package shapes is a fixture for the Go loader.
package shapes

import "time"

// Color is a display color.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
)

// UserID identifies a user.
//
//shapeshare:kotlin=JvmInline
type UserID string

// User is an account.
//
//shapeshare:redacted
type User struct {
	ID       UserID    `json:"id"`
	Email    string    `json:"email,omitempty"`
	Nick     *string   `json:"nick"`
	Tags     []string  `json:"tags"`
	Created  time.Time `json:"created_at" kttype:"java.time.Instant"`
	Favorite Color     `json:"favorite"`
	password string
	Internal string `json:"-"`
}

// Page is one page of results.
type Page[T any] struct {
	Items []T            `json:"items"`
	Meta  map[string]int `json:"meta"`
	Hash  [4]byte        `json:"hash"`
}

// MaxPageSize bounds Page.Items.
const MaxPageSize = 100
