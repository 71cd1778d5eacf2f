package checkout

import (
	"regexp"
	"strings"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
)

var (
	phoneRe    = regexp.MustCompile(`^\+359\d{9}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postcodeRe = regexp.MustCompile(`^\d{4}$`)
)

// ValidateForm runs the full synchronous validation pass. It clears prior
// errors, records a symbolic code per failing field, and returns true only
// when no errors were set. It never contacts the server.
func (s *FormStore) ValidateForm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = make(map[string]string)
	f := s.form

	name := strings.TrimSpace(f.FullName)
	switch {
	case name == "":
		s.errors["fullName"] = model.CodeRequired
	case len(strings.Fields(name)) < 2:
		s.errors["fullName"] = model.CodeMinWords
	}

	if strings.TrimSpace(f.Phone) == "" {
		s.errors["phone"] = model.CodeRequired
	} else if !phoneRe.MatchString(NormalizePhone(f.Phone)) {
		s.errors["phone"] = model.CodeInvalid
	}

	if f.Email != "" && !emailRe.MatchString(f.Email) {
		s.errors["email"] = model.CodeInvalid
	}

	// Address is required unless the customer picks the order up.
	if f.DeliveryMethod != model.DeliveryPickup {
		if strings.TrimSpace(f.Address.Street) == "" {
			s.errors["street"] = model.CodeRequired
		}
		if strings.TrimSpace(f.Address.City) == "" {
			s.errors["city"] = model.CodeRequired
		}
		if strings.TrimSpace(f.Address.Postcode) == "" {
			s.errors["postcode"] = model.CodeRequired
		} else if !postcodeRe.MatchString(f.Address.Postcode) {
			s.errors["postcode"] = model.CodeInvalid
		}
	}

	if !f.Consent {
		s.errors["consent"] = model.CodeRequired
	}

	return len(s.errors) == 0
}
