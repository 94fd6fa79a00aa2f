// Package ssl 提供 HTTPS 相关的 Gin 中间件
package ssl

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

/* TlsHandler 创建一个 Gin 中间件，将 HTTP 请求重定向到 HTTPS
 *
 * 参数:
 *	host: 服务器的主机名（域名），如 "example.com"
 *	port: 服务器的 HTTPS 端口号，通常为 443
 * 返回值:
 *	gin.HandlerFunc: 一个 Gin 中间件函数
 *
 * secure 在完成重定向或拒绝请求后返回错误，此时终止后续处理
 */
func TlsHandler(host string, port int) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect: true,
		SSLHost:     host + ":" + strconv.Itoa(port),
	})
	return func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}
