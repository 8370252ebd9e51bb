// Package query provides a small in-process dataset engine and the two
// inspection reports built on it.
//
// A DataSet is a lazy, restartable sequence of typed records. Operators
// compose new datasets without reading anything; records flow only when the
// result is collected or printed:
//
//	env := query.NewEnvironment(query.WithParallelism(4))
//	businesses := query.FromSeq(env, "business", reader.Records[model.Business](schema.Business, "/tmp/business"))
//	violations := query.FromSeq(env, "violation", reader.Records[model.Violation](schema.Violation, "/tmp/violations"))
//
//	places, err := query.HighRiskPlaces(businesses, violations, 20).Collect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Operators
//
//   - Filter keeps records matching a predicate
//   - Map projects records into a new type
//   - Join is an inner equi-join on a key extracted from each side
//   - Distinct removes duplicate records (the whole record is the key)
//   - First keeps at most n records
//
// Join and Distinct run their inputs on worker goroutines. Callers only
// see the blocking Collect.
package query
