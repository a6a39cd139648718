// Package export turns the data files into the feeds published on the website:
// a JSON array of conferences and an iCalendar file with one all-day event per
// conference.
//
// Both feeds are derived from the same list, built by Load:
//
//	confs, err := export.Load(paths)
//	if err != nil {
//		return err
//	}
//	if err := export.WriteJSON(jsonFile, confs); err != nil {
//		return err
//	}
//	cal := &export.Calendar{ProdID: cfg.Export.ProdID}
//	n, err := cal.Write(icsFile, confs)
package export
