package company

import "strconv"

// IssueNumber formats the next invoice number and returns the profile with its
// counter advanced by one. p itself is left untouched.
func IssueNumber(p Profile) (string, Profile) {
	next := p.NextInvoiceNumber
	if next < 1 {
		next = 1
	}

	number := p.InvoiceNumberPrefix + strconv.FormatInt(next, 10)
	p.NextInvoiceNumber = next + 1

	return number, p
}
