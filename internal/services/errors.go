package services

import "errors"

// Domain errors surfaced to handlers, which translate them to HTTP status
// codes. Services wrap these with context; handlers match with errors.Is.
var (
	// ErrUsernameTaken means registration hit an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown usernames and password
	// mismatches, so login failures never reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrOutOfStock means a product with zero remaining stock cannot be
	// added to a cart.
	ErrOutOfStock = errors.New("product is out of stock")

	// ErrEmptyCart means checkout was attempted with no cart rows at all.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrEmptySelection means the explicit cart-row id filter matched
	// nothing, even though the cart itself has rows.
	ErrEmptySelection = errors.New("no cart items selected")

	// ErrEmptyFile means an image upload carried no content.
	ErrEmptyFile = errors.New("empty file")
)
