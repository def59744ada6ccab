package handlers

import "github.com/go-playground/validator/v10"

// validate checks request DTOs against their struct tags. One instance
// is shared; Validate is safe for concurrent use.
var validate = validator.New()
