package toolbar

import "errors"

// ErrRegistrationConflict is returned when a helper's namespace extension is already taken.
var ErrRegistrationConflict = errors.New("toolbar helper namespace conflict")

// ErrRegistrySealed is returned when a helper is registered after start-up has finished.
var ErrRegistrySealed = errors.New("toolbar helper registry is sealed")

// ErrConfigurationMissing is recorded when neither a document nor a static dictionary exists.
var ErrConfigurationMissing = errors.New("toolbar configuration missing")

// ErrDocumentNotFound is returned by a DocumentStore when no document has the requested name.
var ErrDocumentNotFound = errors.New("toolbar document not found")

// ErrMalformedEntry is recorded for every document entry that had to be skipped.
var ErrMalformedEntry = errors.New("malformed toolbar entry")

// ErrCustomizationDisabled is returned when the user tries to change a toolbar that does not allow it.
var ErrCustomizationDisabled = errors.New("toolbar customization is disabled")
