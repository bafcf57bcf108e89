package model

// Store holds icon images keyed by filename
type Store interface {
	Exists(iconFilename string) (bool, error)
	Write(iconFilename string, data []byte) error
}
