package domain

var Tables = []interface{}{
	// System
	&SysUser{},
	// Catalog
	&Product{},
	// Ledger
	&Transaction{},
}
