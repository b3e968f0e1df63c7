package service

// 对外错误文案，与接口文档保持一致
const (
	MsgUnauthorizedUser = "There is no user with such login or password"
	MsgSelfForbidden    = "You cannot contribute to your own wish"
	MsgOverprice        = "The total amount exceeds the price of the wish"
	MsgAlreadyFunded    = "The required amount has already been raised"
	MsgOwnerForbidden   = "You do not have permission to edit or delete this wish or wishlist"
	MsgNotFoundGeneral  = "Entity you are searching for is not found"
	MsgUserConflict     = "User with this username or email already exists"
	MsgUserNotFound     = "User not found"
)
