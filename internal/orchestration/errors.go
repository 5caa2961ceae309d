package orchestration

import "errors"

// ErrProductNotOwned is returned by preflight when the org lacks the product.
var ErrProductNotOwned = errors.New("organization does not own the product")
