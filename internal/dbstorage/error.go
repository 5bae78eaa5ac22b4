package dbstorage

import "errors"

var ErrUserAlreadyExists = errors.New("user with such credentials already exist")
var ErrInvalidLoginPassword = errors.New("invalid login/password")
var ErrProductExists = errors.New("product with such article already exist")
var ErrProductNotFound = errors.New("product not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrPickupPointNotFound = errors.New("pickup point not found")
