// Package orm is the runtime surface that generated marshallers compile
// against.
//
// A marshaller copies one model between a result row (Cursor) and a write
// container (Values). Generated files register their marshaller in init, so
// callers only need Load and Fill:
//
//	cursor := orm.NewMemoryCursor([]string{"id", "title"})
//	cursor.AddRow(int64(1), "Dune")
//	cursor.Next()
//
//	var book library.Book
//	if err := orm.Load(&book, cursor); err != nil {
//		return err
//	}
//
// Types that do not map onto a column accessor can be stored through a
// Serializer registered with RegisterSerializer. time.Time and uuid.UUID are
// registered by default.
package orm
