// Package reader reads the parquet datasets produced by the ingest package.
//
// A dataset is a directory holding one or more parquet data files, possibly
// in nested partition directories, plus hidden bookkeeping such as the
// .metadata descriptor.
//
// # Typed Records
//
// Records returns a lazy sequence of typed records bound to a registry
// schema. Files are opened only while they are being consumed:
//
//	for b, err := range reader.Records[model.Business](schema.Business, "/tmp/business") {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(b.Name)
//	}
//
// # Map Rows
//
// ReadDataset loads every row of a dataset as a map keyed by column name,
// which is what the output formatters consume:
//
//	rows, err := reader.ReadDataset("/tmp/violations")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// When rows come from more than one data file each row carries a "_file"
// column with its source path.
//
// # Schema Introspection
//
//	infos, err := reader.DescribeDataset("/tmp/inspections")
//	for _, info := range infos {
//	    fmt.Printf("%s: %s\n", info.Name, info.Type)
//	}
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
