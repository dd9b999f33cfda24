package enrich

// SelectBestISBN picks the preferred ISBN from a candidate list: the first
// 13-digit numeric ISBN, else the first 10-character one (ISBN-10 may end in
// "X"), else the empty string.
func SelectBestISBN(isbns []string) string {
	for _, isbn := range isbns {
		if len(isbn) == 13 && isDigits(isbn) {
			return isbn
		}
	}
	for _, isbn := range isbns {
		if len(isbn) == 10 {
			return isbn
		}
	}
	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
