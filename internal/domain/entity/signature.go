package entity

import "time"

// Signature firma capturada en el dispositivo (0 o 1 por documento).
// ImageData suele ser un data URL "data:image/png;base64,...".
type Signature struct {
	ID         string
	SignerName string
	SignedAt   time.Time
	ImageData  string
}
