package password

// Package password collects and applies the root password.
//
// The configure hook asks twice and retries on mismatch. An empty entry
// offers to keep the password unchanged (the account stays as shipped,
// typically locked). The passwd.plaintext-password.root credential, if
// provided, pre-seeds the value and suppresses the dialog. Apply feeds
// chpasswd over stdin so the cleartext never shows up in process listings.
