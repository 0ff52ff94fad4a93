// Package models contains the GORM persistence models of the storefront.
// They carry every ORM tag and table mapping so domain types stay free of
// persistence concerns; repositories convert between the two.
package models
