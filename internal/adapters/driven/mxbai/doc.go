// Package mxbai implements the content store ports against the Mixedbread
// REST API.
//
// Ingestion uses three calls per document: upload the file, attach it to a
// store with metadata, then poll the store file until indexing settles.
//
//	client, err := mxbai.NewClient(mxbai.Config{APIKey: key})
//	if err != nil {
//	    return err
//	}
//	total, err := client.FileCount(ctx, storeID)
package mxbai
