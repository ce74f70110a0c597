// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package codec

import "fmt"

func ExampleNormalizer_MergeStrings() {
	n := NewNormalizer()

	s, _ := n.MergeStrings("X,WritableSerialization", "Y,BytesSerialization")
	fmt.Println(s)
	// Output:
	// WritableSerialization,BytesSerialization,TupleSerialization,X,Y
}

func ExampleNormalizer_Normalize() {
	n := NewNormalizer(ResolveWith(TypeResolver{}))

	type AvroSerialization struct{}

	s, _ := n.Normalize(AvroSerialization{})
	fmt.Println(s)
	// Output:
	// WritableSerialization,BytesSerialization,TupleSerialization,AvroSerialization
}
