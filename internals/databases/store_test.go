package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/docstore/memory"
)

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(context.Background(), configs.AppConfig{DocumentStore: configs.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, s)

	_, err = OpenStore(context.Background(), configs.AppConfig{DocumentStore: "firestore"})
	assert.ErrorContains(t, err, "firestore")
}

func TestConnectMongoRejectsBadURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "http://not-mongo", "chilume")
	assert.ErrorContains(t, err, "mongodb uri")
}
