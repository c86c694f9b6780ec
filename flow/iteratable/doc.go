/*
Package iteratable implements a small worklist-friendly set type.

Set is a special-purpose set, suitable for algorithms that repeatedly
grow a collection while iterating over it — exactly the shape of an
Earley-style Sigma-set worklist and the visited-item tracking a parse
tree walk needs to guard against cycles. Items added during an
in-progress iteration are picked up by that same iteration, which is
what lets Sigma-set construction be expressed as "iterate until Next
returns false" instead of a separate fixed-point loop around a
read-only set.

Add, Remove and Union mutate the receiver in place; Copy, Subset and
Difference return new sets and leave the receiver unchanged.

License

Governed by a 3-Clause BSD license. License file may be found in the
root folder of this module.
*/
package iteratable
