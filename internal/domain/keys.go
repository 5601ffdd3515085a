package domain

type CtxKey string

const (
	KeyUser      CtxKey = "User"
	KeyUserUID   CtxKey = "UserUID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
