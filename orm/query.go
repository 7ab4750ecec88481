package orm

import (
	"github.com/AlphaR2/soteria"
)

// queryPrefix returns all models with given key prefix.
func queryPrefix(db soteria.ReadOnlyKVStore, prefix []byte) ([]soteria.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator.
func ConsumeIterator(itr soteria.Iterator) ([]soteria.Model, error) {
	defer itr.Close()

	var res []soteria.Model
	for itr.Valid() {
		res = append(res, soteria.Model{
			Key:   itr.Key(),
			Value: itr.Value(),
		})
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into (start, end) to create
// and iterator over all keys with that prefix.
//
// In the case of a nil prefix, it returns a full range over the db.
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed the last byte? then we need to
	// shorten it and increment the next to last
	for end[l] == 0 {
		if l == 0 {
			// the whole prefix was 0xff bytes, iterate to the end
			return prefix, nil
		}
		end = end[:l]
		l--
		end[l]++
	}
	return prefix, end
}
