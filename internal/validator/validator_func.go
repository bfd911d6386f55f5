package validator

import (
	"net"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const (
	amountRegex = `^\d+(\.\d{1,2})?$`
)

const (
	AmountTag     = "amount"
	ListenAddrTag = "listenaddr"
)

var amountPattern = regexp.MustCompile(amountRegex)

var valid = map[string]func(fl validator.FieldLevel) bool{
	AmountTag:     ValidateAmount,
	ListenAddrTag: ValidateListenAddr,
}

// ValidateAmount accepts a plain major-unit amount such as "500" or "99.50".
func ValidateAmount(fl validator.FieldLevel) bool {
	return amountPattern.MatchString(fl.Field().String())
}

// ValidateListenAddr accepts host:port where port 0 asks the OS for a free port.
func ValidateListenAddr(fl validator.FieldLevel) bool {
	_, port, err := net.SplitHostPort(fl.Field().String())
	if err != nil {
		return false
	}

	n, err := strconv.Atoi(port)
	return err == nil && n >= 0 && n <= 65535
}
