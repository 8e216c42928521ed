package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer variant tags. A Kunde row is either a Privatkunde ("P") with a
// hobby set or a Firmenkunde ("F") with company fields, discriminated by Art.
const (
	ArtPrivatkunde = "P"
	ArtFirmenkunde = "F"
)

const (
	NachnameLengthMin = 2
	NachnameLengthMax = 32
	VornameLengthMax  = 32
	EmailLengthMax    = 128
)

// NachnamePattern matches a capitalized last name with optional prefixes
// such as "von" or "van" and an optional hyphenated second part.
const NachnamePattern = `^(o'|von|von der|von und zu|van)?[A-ZÄÖÜ][a-zäöüß]+(-[A-ZÄÖÜ][a-zäöüß]+)?$`

// Kunde is a customer. Email is unique across all customers. The address is
// exclusively owned (created and deleted with the customer); orders reference
// the customer by foreign key and are loaded on demand via Bestellungen.
type Kunde struct {
	ID       uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Art      string     `gorm:"size:1;not null;default:P" json:"art" validate:"required,oneof=P F"`
	Nachname string     `gorm:"size:32;not null;index" json:"nachname" validate:"required,min=2,max=32,nachname"`
	Vorname  string     `gorm:"size:32;not null" json:"vorname" validate:"required,max=32"`
	Email    string     `gorm:"size:128;not null;uniqueIndex" json:"email" validate:"required,email,max=128"`
	Seit     *time.Time `gorm:"type:date" json:"seit,omitempty" validate:"omitempty,past"`

	Adresse Adresse `gorm:"foreignKey:KundeID" json:"adresse"`

	// Privatkunde payload
	Hobbys HobbyList `gorm:"type:jsonb" json:"hobbys,omitempty"`
	// Firmenkunde payload
	Firma  string           `gorm:"size:64" json:"firma,omitempty" validate:"omitempty,max=64"`
	Umsatz *decimal.Decimal `gorm:"type:numeric(12,2)" json:"umsatz,omitempty" validate:"omitempty,gte=0"`

	Bestellungen []Bestellung `gorm:"foreignKey:KundeID" json:"-"`

	BestellungenURI string `gorm:"-" json:"bestellungenUri,omitempty"`

	Erzeugt      time.Time `gorm:"not null" json:"-"`
	Aktualisiert time.Time `gorm:"not null" json:"-"`
}

func (Kunde) TableName() string {
	return "kunde"
}

// SetValues copies the mutable fields of k2 onto k, leaving identity,
// associations and timestamps untouched.
func (k *Kunde) SetValues(k2 *Kunde) {
	k.Art = k2.Art
	k.Nachname = k2.Nachname
	k.Vorname = k2.Vorname
	k.Email = k2.Email
	k.Seit = k2.Seit
	k.Hobbys = k2.Hobbys
	k.Firma = k2.Firma
	k.Umsatz = k2.Umsatz
}
