package store

// Key prefixes for BadgerDB.
const (
	driftPrefix       = "drift:"
	layerPrefix       = "layer:"
	libraryItemPrefix = "libitem:"
	legacyPrefix      = "legacy:"

	// userRefIndex is the unique compound index on (userId, refId).
	userRefIndex = "userref"
)

// userRefKey builds the compound index value for a library item.
// The separator cannot appear in nanoid-generated IDs; refIds come from the
// external catalog and use slug characters only.
func userRefKey(userID, refID string) string {
	return userID + "/" + refID
}
