package menu

import "errors"

// ErrInvalidArgument is returned for calls that violate a structural
// invariant: attaching a submenu that already has a parent, inserting an
// item that already belongs to a menu, or passing a negative indentation
// level. Inputs that can be normalized (over-long indentation, absent
// archive keys) are normalized instead of rejected.
var ErrInvalidArgument = errors.New("menu: invalid argument")
