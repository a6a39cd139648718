/*
Package table reads and writes the comma-delimited conference data files.

The first line of a file is its header; every following line is one record. Quoting
follows the usual convention: fields may be wrapped in double quotes to embed commas or
newlines, and a quote inside a quoted field is doubled.

Rows are yielded lazily in file order:

	r, err := table.Open("2024.csv")
	if err != nil {
		return err
	}
	defer r.Close()

	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err // *errors.Error of kind malformed
		}
		subject := row.Record.Get("Subject")
		...
	}

Row Shape:

Unlike a plain field-name mapping, every Row keeps the raw values it was split into, so
rows with more or fewer fields than the header are detectable without re-reading the
line. The Record view mirrors that: a short row leaves its trailing fields absent
(Value.Present is false) and a long row keeps the extra values in Record.Overflow.
*/
package table
