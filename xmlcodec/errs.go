package xmlcodec

import "errors"

var (
	ErrParse     = errors.New("xml parse error")
	ErrSerialize = errors.New("xml serialize error")
)
