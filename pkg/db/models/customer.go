package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer captures the details needed to fulfil and bill an order. Auth
// lives elsewhere; this row only carries profile and saved payment fields.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex"`
	Phone     *string   `gorm:"column:phone"`

	AddressLine1 *string `gorm:"column:address_line1"`
	AddressLine2 *string `gorm:"column:address_line2"`
	City         *string `gorm:"column:city"`
	Province     *string `gorm:"column:province"`
	PostalCode   *string `gorm:"column:postal_code"`
	Country      *string `gorm:"column:country"`

	BillingAddressLine1 *string `gorm:"column:billing_address_line1"`
	BillingAddressLine2 *string `gorm:"column:billing_address_line2"`
	BillingCity         *string `gorm:"column:billing_city"`
	BillingProvince     *string `gorm:"column:billing_province"`
	BillingPostalCode   *string `gorm:"column:billing_postal_code"`
	BillingCountry      *string `gorm:"column:billing_country"`

	CreditCardHolder *string `gorm:"column:credit_card_holder"`
	CreditCardNumber *string `gorm:"column:credit_card_number"`
	CreditCardExpiry *string `gorm:"column:credit_card_expiry"`
	CreditCardCvv    *string `gorm:"column:credit_card_cvv"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
