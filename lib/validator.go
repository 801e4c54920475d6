package lib

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/getAlby/lnnetwork.go/lnd"
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	Validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.Validator.Struct(i)
}

// NewValidator returns a validator that also knows the "pubkey" and "scid"
// tags used on request parameters.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("pubkey", func(fl validator.FieldLevel) bool {
		return IsValidPubkey(fl.Field().String())
	})
	v.RegisterValidation("scid", func(fl validator.FieldLevel) bool {
		_, err := lnd.ParseShortChannelID(fl.Field().String())
		return err == nil
	})
	return v
}

// IsValidPubkey checks for a hex encoded secp256k1 public key.
func IsValidPubkey(pubkey string) bool {
	pubkeyBytes, err := hex.DecodeString(pubkey)
	if err != nil {
		return false
	}
	_, err = btcec.ParsePubKey(pubkeyBytes)
	return err == nil
}
