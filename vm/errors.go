package vm

import "errors"

// ErrMatchLimitExceeded is returned by the backtracking strategy when its
// step budget is exhausted before the search completes. It distinguishes
// "gave up" from "definitely does not match"; callers must not treat it as
// a plain no-match.
var ErrMatchLimitExceeded = errors.New("vm: backtracking step limit exceeded")

// ErrInvalidUTF8 is returned in strict mode when the haystack contains a
// byte sequence that is not valid UTF-8. Outside strict mode malformed
// sequences decode as U+FFFD and matching stays total over arbitrary bytes.
var ErrInvalidUTF8 = errors.New("vm: invalid UTF-8 in strict mode")
