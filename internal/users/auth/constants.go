// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

// # Authentication Constraints

const (
	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)
