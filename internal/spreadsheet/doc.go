// Package spreadsheet decodes uploaded survey sheets into column tables.
//
// Excel workbooks (.xlsx, .xlsm) are read with excelize from their first
// sheet; .csv files are read with encoding/csv. In both cases the first row
// is discarded and the second row is the header row. Header cells are made
// unique and normalized before the data rows are loaded into a string-typed
// dataframe in which empty cells and common NA markers are missing.
package spreadsheet
