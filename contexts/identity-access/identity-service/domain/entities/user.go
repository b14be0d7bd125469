package entities

import "time"

const (
	UsernameMaxLen = 30
	NameMaxLen     = 255
)

// User is the public identity row. Credential material never leaves the
// repository layer.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	RegistrationDate time.Time `json:"registration_date"`
}
