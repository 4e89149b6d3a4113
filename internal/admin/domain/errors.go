package domain

import "errors"

var (
	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrPhoneExists пользователь с таким телефоном уже существует
	ErrPhoneExists = errors.New("phone number already exists")

	// ErrValidation некорректные входные данные
	ErrValidation = errors.New("validation failed")
)
