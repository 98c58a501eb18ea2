package cvss

// https://nvd.nist.gov/vuln-metrics/cvss/v3-calculator

type metricText struct {
	name              string
	description       string
	valueNames        map[Value]string
	valueDescriptions map[Value]string
}

var metricTexts = [numKeys]metricText{
	AttackVector: {
		name:        "Attack Vector",
		description: "This metric reflects the context by which vulnerability exploitation is possible. This metric value (and consequently the Base score) will be larger the more remote (logically, and physically) an attacker can be in order to exploit the vulnerable component.",
		valueNames: map[Value]string{
			"N": "Network",
			"A": "Adjacent Network",
			"L": "Local",
			"P": "Physical",
		},
		valueDescriptions: map[Value]string{
			"N": "A vulnerability exploitable with Network access means the vulnerable component is bound to the network stack and the attacker's path is through OSI layer 3 (the network layer). Such a vulnerability is often termed 'remotely exploitable' and can be thought of as an attack being exploitable one or more network hops away (e.g. across layer 3 boundaries from routers).",
			"A": "A vulnerability exploitable with Adjacent Network access means the vulnerable component is bound to the network stack, however the attack is limited to the same shared physical (e.g. Bluetooth, IEEE 802.11), or logical (e.g. local IP subnet) network, and cannot be performed across an OSI layer 3 boundary (e.g. a router).",
			"L": "A vulnerability exploitable with Local access means that the vulnerable component is not bound to the network stack, and the attacker's path is via read/write/execute capabilities. In some cases, the attacker may be logged in locally in order to exploit the vulnerability, or may rely on User Interaction to execute a malicious file.",
			"P": "A vulnerability exploitable with Physical access requires the attacker to physically touch or manipulate the vulnerable component, such as attaching an peripheral device to a system.",
		},
	},
	AttackComplexity: {
		name:        "Attack Complexity",
		description: "The Attack Complexity metric describes the conditions beyond the attacker's control that must exist in order to exploit the vulnerability. Such conditions may require the collection of more information about the target, the presence of certain system configuration settings, or computational exceptions.",
		valueNames: map[Value]string{
			"L": "Low",
			"H": "High",
		},
		valueDescriptions: map[Value]string{
			"L": "Specialized access conditions or extenuating circumstances do not exist. An attacker can expect repeatable success against the vulnerable component.",
			"H": "A successful attack depends on conditions beyond the attacker's control. That is, a successful attack cannot be accomplished at will, but requires the attacker to invest in some measurable amount of effort in preparation or execution against the vulnerable component before a successful attack can be expected.",
		},
	},
	PrivilegesRequired: {
		name:        "Privileges Required",
		description: "This metric describes the level of privileges an attacker must possess before successfully exploiting the vulnerability.",
		valueNames: map[Value]string{
			"N": "None",
			"L": "Low",
			"H": "High",
		},
		valueDescriptions: map[Value]string{
			"N": "The attacker is unauthorized prior to attack, and therefore does not require any access to settings or files to carry out an attack.",
			"L": "The attacker is authorized with (i.e. requires) privileges that provide basic user capabilities that could normally affect only settings and files owned by a user. Alternatively, an attacker with Low privileges may have the ability to cause an impact only to non-sensitive resources.",
			"H": "The attacker is authorized with (i.e. requires) privileges that provide significant (e.g. administrative) control over the vulnerable component that could affect component-wide settings and files.",
		},
	},
	UserInteraction: {
		name:        "User Interaction",
		description: "This metric captures the requirement for a user, other than the attacker, to participate in the successful compromise of the vulnerable component. This metric determines whether the vulnerability can be exploited solely at the will of the attacker, or whether a separate user (or user-initiated process) must participate in some manner.",
		valueNames: map[Value]string{
			"N": "None",
			"R": "Required",
		},
		valueDescriptions: map[Value]string{
			"N": "The vulnerable system can be exploited without interaction from any user.",
			"R": "Successful exploitation of this vulnerability requires a user to take some action before the vulnerability can be exploited, such as convincing a user to click a link in an email.",
		},
	},
	Scope: {
		name:        "Scope",
		description: "The ability for a vulnerability in one software component to impact resources beyond its means, or privileges. This consequence is represented by the metric Authorization Scope, or simply Scope.",
		valueNames: map[Value]string{
			"U": "Unchanged",
			"C": "Changed",
		},
		valueDescriptions: map[Value]string{
			"U": "An exploited vulnerability can only affect resources managed by the same authority. In this case the vulnerable component and the impacted component are the same.",
			"C": "An exploited vulnerability can affect resources beyond the authorization privileges intended by the vulnerable component. In this case the vulnerable component and the impacted component are different.",
		},
	},
	Confidentiality: {
		name:        "Confidentiality Impact",
		description: "This metric measures the impact to the confidentiality of the information resources managed by a software component due to a successfully exploited vulnerability. Confidentiality refers to limiting information access and disclosure to only authorized users, as well as preventing access by, or disclosure to, unauthorized ones.",
		valueNames: map[Value]string{
			"N": "None",
			"L": "Low",
			"H": "High",
		},
		valueDescriptions: map[Value]string{
			"N": "There is no loss of confidentiality within the impacted component.",
			"L": "There is some loss of confidentiality. Access to some restricted information is obtained, but the attacker does not have control over what information is obtained, or the amount or kind of loss is constrained. The information disclosure does not cause a direct, serious loss to the impacted component.",
			"H": "There is total loss of confidentiality, resulting in all resources within the impacted component being divulged to the attacker. Alternatively, access to only some restricted information is obtained, but the disclosed information presents a direct, serious impact.",
		},
	},
	Integrity: {
		name:        "Integrity Impact",
		description: "This metric measures the impact to integrity of a successfully exploited vulnerability. Integrity refers to the trustworthiness and veracity of information.",
		valueNames: map[Value]string{
			"N": "None",
			"L": "Low",
			"H": "High",
		},
		valueDescriptions: map[Value]string{
			"N": "There is no loss of integrity within the impacted component.",
			"L": "Modification of data is possible, but the attacker does not have control over the consequence of a modification, or the amount of modification is limited. The data modification does not have a direct, serious impact on the impacted component.",
			"H": "There is a total loss of integrity, or a complete loss of protection. For example, the attacker is able to modify any/all files protected by the impacted component. Alternatively, only some files can be modified, but malicious modification would present a direct, serious consequence to the impacted component.",
		},
	},
	Availability: {
		name:        "Availability Impact",
		description: "This metric measures the impact to the availability of the impacted component resulting from a successfully exploited vulnerability. This metric refers to the loss of availability of the impacted component itself, such as a networked service (e.g., web, database, email).",
		valueNames: map[Value]string{
			"N": "None",
			"L": "Low",
			"H": "High",
		},
		valueDescriptions: map[Value]string{
			"N": "There is no impact to availability within the impacted component.",
			"L": "There is reduced performance or interruptions in resource availability. Even if repeated exploitation of the vulnerability is possible, the attacker does not have the ability to completely deny service to legitimate users.",
			"H": "There is total loss of availability, resulting in the attacker being able to fully deny access to resources in the impacted component; this loss is either sustained (while the attacker continues to deliver the attack) or persistent (the condition persists even after the attack has completed).",
		},
	},
}

func (k Key) Name() string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return metricTexts[k].name
}

func (k Key) Description() string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return metricTexts[k].description
}

func (k Key) ValueName(v Value) string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return metricTexts[k].valueNames[v]
}

func (k Key) ValueDescription(v Value) string {
	if k < 0 || k >= numKeys {
		return ""
	}
	return metricTexts[k].valueDescriptions[v]
}
