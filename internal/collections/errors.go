package collections

import "errors"

// ErrFeatureDisabled indicates the collection is turned off in its config;
// the operation aborts with no partial effect.
var ErrFeatureDisabled = errors.New("feature is disabled")

// ErrEmptyContent indicates blank original or translated text; the
// operation aborts before any storage call.
var ErrEmptyContent = errors.New("cannot add empty translation")
