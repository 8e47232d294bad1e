package model

import "errors"

// ErrInvalidColumns 表示栏数小于 1。
var ErrInvalidColumns = errors.New("栏数必须为不小于 1 的整数")
