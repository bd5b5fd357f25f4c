package database

import (
	"context"
	"fmt"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/docstore"
	"chilume_backend/internals/docstore/memory"
	"chilume_backend/internals/docstore/mongo"
	"chilume_backend/internals/docstore/postgres"
)

// OpenStore builds the docstore backend selected by DOCUMENT_STORE.
func OpenStore(ctx context.Context, cfg configs.AppConfig) (docstore.Store, error) {
	switch cfg.DocumentStore {
	case configs.StorePostgres:
		db, err := ConnectDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		WarmUpQueries(db)
		return postgres.New(db), nil

	case configs.StoreMongo:
		db, err := ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return mongo.New(db), nil

	case configs.StoreMemory, "":
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown DOCUMENT_STORE %q", cfg.DocumentStore)
}
