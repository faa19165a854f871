package warehouse

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "warehouse"

// MongoDriver writes each warehouse table as a collection of documents
// keyed by column name. DDL strings are ignored; collections are created
// implicitly.
type MongoDriver struct {
	client *mongo.Client

	// Database overrides the target database name; defaults to "warehouse".
	Database string
}

func (md *MongoDriver) Connect(dsn string) error {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return err
	}
	md.client = client
	if md.Database == "" {
		md.Database = defaultMongoDatabase
	}
	return nil
}

func (md *MongoDriver) Close() error {
	return md.client.Disconnect(context.Background())
}

func (md *MongoDriver) Reset(ctx context.Context, table, ddl string) error {
	return md.client.Database(md.Database).Collection(table).Drop(ctx)
}

func (md *MongoDriver) Ensure(ctx context.Context, table, ddl string) error {
	// Collections are created on first insert.
	return nil
}

func (md *MongoDriver) BulkInsert(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		doc := make(bson.M, len(columns))
		for j, col := range columns {
			doc[col] = row[j]
		}
		docs[i] = doc
	}
	res, err := md.client.Database(md.Database).Collection(table).InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return int64(len(res.InsertedIDs)), nil
}
