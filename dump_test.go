package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpMessages(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	bob, err := store.CreateAccount(ctx, "bob", "pass1")
	require.NoError(t, err)
	_, err = store.CreateMessage(ctx, bob.AccountID, "first post", 1700000000)
	require.NoError(t, err)
	_, err = store.CreateMessage(ctx, bob.AccountID, "second post", 1700000060)
	require.NoError(t, err)

	var out bytes.Buffer
	handled, err := runCommand(ctx, []string{"dump"}, store, &out)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Contains(t, out.String(), "1,1,first post,1700000000")
	assert.Contains(t, out.String(), "2,1,second post,1700000060")
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()

	var out bytes.Buffer
	handled, err := runCommand(ctx, nil, store, &out)
	assert.NoError(t, err)
	assert.False(t, handled)

	handled, err = runCommand(ctx, []string{"-h"}, store, &out)
	assert.NoError(t, err)
	assert.True(t, handled)
	assert.Contains(t, out.String(), "Usage:")

	_, err = runCommand(ctx, []string{"flag"}, store, &out)
	assert.Error(t, err)

	_, err = runCommand(ctx, []string{"dump"}, newFaultyStore("list messages"), &out)
	assert.True(t, isStorageError(err))
}
