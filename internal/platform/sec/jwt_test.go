// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
)

// writeTestKeyPair generates a throwaway RSA key pair as PEM files.
func writeTestKeyPair(t *testing.T) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath = filepath.Join(dir, "private.pem")
	publicPath = filepath.Join(dir, "public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	return privatePath, publicPath
}

/*
TestTokenService_RoundTrip verifies generation and verification of an
access token, claims included.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)
	service, err := sec.NewTokenService(privatePath, publicPath, "puuha.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "Maria", "organizer", true, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Maria", claims.Username)
	assert.Equal(t, "organizer", claims.Role)
	assert.True(t, claims.Approved)
	assert.Equal(t, "puuha.app", claims.Issuer)
}

/*
TestTokenService_RejectsExpired verifies expired tokens fail verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t)
	service, err := sec.NewTokenService(privatePath, publicPath, "puuha.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "Maria", "user", true, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignSignature verifies tokens signed with a
different key are refused.
*/
func TestTokenService_RejectsForeignSignature(t *testing.T) {
	privateA, publicA := writeTestKeyPair(t)
	serviceA, err := sec.NewTokenService(privateA, publicA, "puuha.app")
	require.NoError(t, err)

	privateB, publicB := writeTestKeyPair(t)
	serviceB, err := sec.NewTokenService(privateB, publicB, "puuha.app")
	require.NoError(t, err)

	token, err := serviceA.GenerateAccessToken("user-1", "Maria", "user", true, time.Minute)
	require.NoError(t, err)

	_, err = serviceB.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestPasswordHashing verifies the bcrypt round trip and mismatch behavior.
*/
func TestPasswordHashing(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
}

/*
TestRole_AtLeast verifies the role hierarchy ordering.
*/
func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleOrganizer))
	assert.True(t, sec.RoleOrganizer.AtLeast(sec.RoleOrganizer))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleOrganizer))
	assert.False(t, sec.RoleOrganizer.AtLeast(sec.RoleAdmin))
}
