package domain

import "errors"

// Domain errors represent selection and configuration failures.
// These are distinct from infrastructure errors.
var (
	// ErrNoCriteria indicates a selection request carried no search or
	// filter directives at all.
	ErrNoCriteria = errors.New("no search or filter criteria specified")

	// ErrInvalidQuery indicates a malformed search query input.
	ErrInvalidQuery = errors.New("invalid query input")

	// ErrInvalidFilter indicates a malformed filter rule input.
	ErrInvalidFilter = errors.New("invalid filter input")

	// ErrInvalidCategory indicates an unknown search category.
	ErrInvalidCategory = errors.New("invalid search category")

	// Set tree errors.

	// ErrMinusArity indicates a minus node without exactly two children.
	// This is a structural defect in pipeline assembly, fatal to the
	// resolution that encounters it.
	ErrMinusArity = errors.New("minus node requires exactly two children")

	// ErrLeafMode indicates a leaf combining under a mode other than
	// union or intersection.
	ErrLeafMode = errors.New("leaf nodes combine by union or intersection only")

	// Name resolution errors.

	// ErrPersonNotFound indicates a person name matched nobody.
	ErrPersonNotFound = errors.New("person not found")

	// ErrAlbumNotFound indicates an album name matched no album.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrAlbumAmbiguous indicates an album name matched several albums.
	ErrAlbumAmbiguous = errors.New("album name is ambiguous")
)
