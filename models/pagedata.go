package models

// PageData carries the fields every rendered page shares.
type PageData struct {
	User  *UserSnapshot
	Flash string
	Error string
}
