package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/keesa/smsparse/internal/model"
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is required")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

func validateMerchant(m *model.Merchant) error {
	if m == nil {
		return fmt.Errorf("merchant is required")
	}
	if err := validateString(m.Name, "merchant name"); err != nil {
		return err
	}
	if err := validateString(m.DisplayName, "merchant display name"); err != nil {
		return err
	}
	return nil
}
