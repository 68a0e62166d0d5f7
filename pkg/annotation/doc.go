// Package annotation reads functional annotation tables and normalizes them
// into (Hit_Id, Gene) records.
//
// Three table flavors are supported, one per [Kind]:
//
//   - [Kofam]: a KofamScan summary with Hit_Id and Gene columns
//   - [EggNOG]: eggNOG-mapper output, where query becomes Hit_Id and
//     Preferred_name becomes Gene; rows whose gene is "-" are dropped
//   - [Custom]: any user table with Hit_Id and Gene columns
//
// All tables are tab separated with a header row. Lines starting with "#"
// are comments, except for a header written as "#query" or "#Hit_Id".
// A table lacking either required column fails with a SCHEMA error naming
// both columns, before any rendering begins.
package annotation
