// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pin_test

import (
	"fmt"

	"code.hybscloud.com/pin"
)

func ExampleNew() {
	heart := pin.New(func(c pin.Capturer[[]byte]) {
		data := []byte{240, 159, 146, 150}
		c.Capture(data[:])
	})
	defer heart.Close()

	fmt.Println(string(*heart.Ref()))
	// Output: 💖
}

func ExampleBox_Mut() {
	name := pin.New(func(c pin.Capturer[[]byte]) {
		data := []byte("escher")
		c.Capture(data[:])
	})
	defer name.Close()

	view := *name.Mut()
	for i, b := range view {
		if 'a' <= b && b <= 'z' {
			view[i] = b - ('a' - 'A')
		}
	}

	fmt.Println(string(*name.Ref()))
	// Output: ESCHER
}
