// Package random 生成连接标识等场景使用的随机字符串
package random

import (
	"math/rand"
	"strings"
	"time"
)

const digits = "0123456789"

/* GetRandomDigits 生成指定长度的随机数字串
 * 参数:
 *	n: 数字位数，首位不为0
 * 返回值:
 *	string: 随机数字串，n <= 0 时为空
 * 示例:
 *	GetRandomDigits(6) // 返回类似 "527301" 的字符串
 */
func GetRandomDigits(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(digits[1+rand.Intn(9)])
	for i := 1; i < n; i++ {
		b.WriteByte(digits[rand.Intn(10)])
	}
	return b.String()
}

/* GetNowAndLenRandomString 生成包含当前日期和指定长度随机数的字符串
 * 结果只包含ASCII数字，可直接用于频道名称
 * 示例:
 *	GetNowAndLenRandomString(6) // 返回类似 "20261014123456" 的字符串
 */
func GetNowAndLenRandomString(n int) string {
	return time.Now().Format("20060102") + GetRandomDigits(n)
}
